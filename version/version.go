package version

import (
	"fmt"
	"runtime"
)

// 以下变量在构建时通过 -ldflags "-X" 注入
var (
	Version   = "v0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func String() string {
	return fmt.Sprintf("Version: %s\nGit Commit: %s\nBuild Time: %s\nGo Version: %s",
		Version, GitCommit, BuildTime, runtime.Version())
}

func Printer() {
	fmt.Println(String())
}
