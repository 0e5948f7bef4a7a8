package version

// Name is the program name reported by the version command.
const Name = "salesgen"

// Version and BuildDate are overridden at link time with -ldflags -X.
var Version = "0.1.0"
var BuildDate = "2026-10-19"

func GetVersion() string {
	return Version
}

func GetBuildDate() string {
	return BuildDate
}

// String returns "salesgen <version>".
func String() string {
	return Name + " " + GetVersion()
}

// Long returns "salesgen <version> (built <date>)".
func Long() string {
	return String() + " (built " + GetBuildDate() + ")"
}
