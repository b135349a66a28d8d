package internal

import (
	"log"
	"os"
	"regexp"
	"runtime"
	"slices"
	"strings"

	"github.com/earthboundkid/versioninfo/v2"
)

var sensitiveRegex = regexp.MustCompile(`(?i)(PASSWORD|API_KEY|ACCESS_KEY|SECRET|TOKEN)`)

func Version() string {
	return versioninfo.Short()
}

func ShowVersion() {
	log.Printf("Version: %s, GOMAXPROCS: %d\n", Version(), runtime.GOMAXPROCS(0))
}

// EnvironmentVars logs every variable starting with prefix, masking the
// values of anything that looks like a credential.
func EnvironmentVars(prefix string) {
	log.Printf("Environment variables (%s*)", prefix)

	for _, kv := range MaskedEnviron(os.Environ(), prefix) {
		log.Printf("  %s\n", kv)
	}
}

func MaskedEnviron(environ []string, prefix string) []string {
	masked := make([]string, 0, len(environ))
	for _, entry := range environ {
		key, value, _ := strings.Cut(entry, "=")
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if sensitiveRegex.MatchString(key) {
			value = "********"
		}
		masked = append(masked, key+": "+value)
	}
	slices.Sort(masked)
	return masked
}
