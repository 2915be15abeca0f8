package internal

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"

	"github.com/oneconcern/datacat/internal/rand"
)

// MemProfDirEnv points heap profile dumps at a directory. Dumps are skipped
// when the variable is unset and no explicit destination is given.
const MemProfDirEnv = "DATACAT_MEMPROF_DIR"

func writeProfIfNExist(path string, name string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		var fprof *os.File
		fprof, err = os.Create(path)
		if err != nil {
			return err
		}
		defer fprof.Close()
		err = pprof.Lookup(name).WriteTo(fprof, 0)
		if err != nil {
			return err
		}
	}
	return nil
}

type MinProfMB struct {
	Alloc   uint64
	HeapSys uint64
}

type MaybeMemProfParams struct {
	MemStats   *runtime.MemStats
	MinMB      MinProfMB
	DestDir    string
	NamePrefix string
}

func maybeMemProfDefaults(params MaybeMemProfParams) MaybeMemProfParams {
	if params.DestDir == "" {
		params.DestDir = os.Getenv(MemProfDirEnv)
	}
	if params.NamePrefix == "" {
		params.NamePrefix = "mem_" + rand.LetterString(3)
	}
	if params.MemStats == nil {
		mstats := new(runtime.MemStats)
		runtime.ReadMemStats(mstats)
		params.MemStats = mstats
	}
	return params
}

// MaybeMemProf dumps heap and allocation profiles once the live heap crosses
// the given thresholds, as around rendering a full size raster mask.
func MaybeMemProf(params MaybeMemProfParams) error {
	params = maybeMemProfDefaults(params)
	if params.DestDir == "" {
		return nil
	}
	if params.MemStats.Alloc/1024/1024 < params.MinMB.Alloc ||
		params.MemStats.HeapSys/1024/1024 < params.MinMB.HeapSys {
		return nil
	}
	if _, err := os.Stat(params.DestDir); !os.IsNotExist(err) {
		basePath := filepath.Join(params.DestDir, strings.Join([]string{
			params.NamePrefix,
			strconv.Itoa(int(params.MinMB.Alloc)),
			strconv.Itoa(int(params.MinMB.HeapSys)),
		}, "-"))
		if err := writeProfIfNExist(basePath+".mem.prof", "heap"); err != nil {
			return err
		}
		if err := writeProfIfNExist(basePath+".alloc.prof", "allocs"); err != nil {
			return err
		}
	}
	return nil
}
