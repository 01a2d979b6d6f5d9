package distinfo

import (
	"fmt"
	"strings"
)

// Installer is written to INSTALLER so tools can tell who created the record.
const Installer = "pip-mark-installed"

const summary = "Dummy package for dependency resolution"

// File names inside a dist-info directory, in RECORD order.
const (
	MetadataFile  = "METADATA"
	InstallerFile = "INSTALLER"
	RecordFile    = "RECORD"
	RequestedFile = "REQUESTED"
)

var recordOrder = []string{MetadataFile, InstallerFile, RecordFile, RequestedFile}

// DirName returns "<normalized>-<version>.dist-info".
func DirName(normalized, version string) string {
	return fmt.Sprintf("%s-%s.dist-info", normalized, version)
}

// Metadata renders the METADATA file. name is the original, unnormalized name.
func Metadata(name, version string) string {
	var b strings.Builder
	b.WriteString("Metadata-Version: 2.1\n")
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Version: %s\n", version)
	fmt.Fprintf(&b, "Summary: %s\n", summary)
	return b.String()
}

// Record renders the RECORD manifest. Hash and size columns stay empty
// since none of the listed files belong to a real distribution.
func Record(dirName string) string {
	lines := make([]string, 0, len(recordOrder))
	for _, f := range recordOrder {
		lines = append(lines, fmt.Sprintf("%s/%s,,", dirName, f))
	}
	return strings.Join(lines, "\n")
}

// Files returns the contents of every file in a record, keyed by file name.
func Files(name, version, dirName string) map[string]string {
	return map[string]string{
		MetadataFile:  Metadata(name, version),
		InstallerFile: Installer,
		RequestedFile: "",
		RecordFile:    Record(dirName),
	}
}
