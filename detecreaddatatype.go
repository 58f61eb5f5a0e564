package degexplore

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"
	"io/ioutil"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType attempts to detect the data type of a buffer by checking
// against a set of known byte code signatures. Signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(b []byte) DataType {
Outer:
	for dt, sig := range byteCodeSigs {
		if len(b) < len(sig) {
			continue
		}
		for position := range sig {
			if b[position] != sig[position] {
				continue Outer
			}
		}
		return dt
	}

	return DataTypeNoCompression
}

// MaybeDecompress returns the decompressed contents of b if b starts with a
// known compression signature, and b itself otherwise. Note that xlsx files
// are zip archives, so only call this for delimited text.
func MaybeDecompress(b []byte) ([]byte, error) {
	var r io.Reader
	var err error

	src := bytes.NewReader(b)

	switch DetectDataType(b) {
	case DataTypeGzip:
		r, err = gzip.NewReader(src)
	case DataTypeZip:
		r = zipstream.NewReader(src)
	case DataTypeBZip2:
		r = bzip2.NewReader(src)
	case DataTypeXZ:
		r, err = xz.NewReader(src, 0)
	case DataTypeZ:
		r, err = zlib.NewReader(src)
	default:
		// No data type detected. For now, we assume this is uncompressed.
		return b, nil
	}
	if err != nil {
		return nil, pfx.Err(err)
	}

	// A zipstream needs to be advanced to its first entry before reading
	if zr, ok := r.(*zipstream.Reader); ok {
		if _, err := zr.Next(); err != nil {
			return nil, pfx.Err(err)
		}
	}

	out, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}
