package version

import (
	"fmt"
	"time"
)

// Name - имя клиента в User-Agent и в /version.
const Name = "autobattler-client"

// Заполняются при сборке через -ldflags "-X autobattler-client/internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
)

// buildEpoch - нулевой номер сборки.
var buildEpoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

// VersionInfo - то, что отдает /version.
type VersionInfo struct {
	Name    string `json:"name"`
	Build   int    `json:"build,omitempty"`
	Date    string `json:"date,omitempty"`
	Commit  string `json:"commit,omitempty"`
	Release bool   `json:"release"`
}

// buildNumber - число дней от buildEpoch до BuildDate.
func buildNumber(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("BuildDate is empty")
	}
	t, err := time.ParseInLocation(time.DateOnly, date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid BuildDate %q: %w", date, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("BuildDate %s is before epoch", date)
	}
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info собирает метаданные. Сборка без ldflags (или с битой датой) - dev.
func Info() VersionInfo {
	info := VersionInfo{Name: Name, Commit: BuildCommit}
	if n, err := buildNumber(BuildDate); err == nil {
		info.Build = n
		info.Date = BuildDate
		info.Release = true
	}
	return info
}

// String - строка для лога при старте.
func String() string {
	info := Info()
	if !info.Release {
		return Name + " dev build"
	}
	return fmt.Sprintf("%s build %d (%s) commit[%s]", Name, info.Build, info.Date, commitOrUnknown(info.Commit))
}

// UserAgent - заголовок, с которым клиент подключается к серверу комнат.
func UserAgent() string {
	info := Info()
	if !info.Release {
		return Name + "/dev"
	}
	return fmt.Sprintf("%s/%d (%s)", Name, info.Build, commitOrUnknown(info.Commit))
}

func commitOrUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
