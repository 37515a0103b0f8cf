// Package version хранит сведения о сборке, заданные через -ldflags:
//
//	-X github.com/vladislavdragonenkov/checkout/internal/version.version=v1.2.3
package version

import "fmt"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Build — сведения о текущей сборке.
type Build struct {
	Version string
	Commit  string
	Date    string
}

// Current возвращает сведения о сборке бинарника.
func Current() Build {
	return Build{Version: version, Commit: commit, Date: date}
}

func (b Build) String() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", b.Version, b.Commit, b.Date)
}

// UserAgent формирует User-Agent для исходящих вызовов (gRPC-клиенты, нагрузочный тест).
func (b Build) UserAgent(component string) string {
	return fmt.Sprintf("checkout-%s/%s", component, b.Version)
}

// GetVersion возвращает версию сборки.
func GetVersion() string { return version }

// GetCommit возвращает хеш коммита.
func GetCommit() string { return commit }
