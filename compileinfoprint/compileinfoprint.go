// compileinfoprint prints the build provenance of the running binary to
// os.Stderr when it is imported.
package compileinfoprint

import "github.com/carbocation/degexplore/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
