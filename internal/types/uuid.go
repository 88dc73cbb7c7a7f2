package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex rfi_01HZX3N4Q8W6Z2M5B7C9D1E3F4
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns a human readable number with a prefix.
// Total length is capped at 12 characters, e.g., `RFI-XYZ12A8Q`.
func GenerateShortIDWithPrefix(prefix string) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.ReplaceAll(id, "-", "")
	id = strings.ReplaceAll(id, "_", "")

	availableLen := 12 - len(prefix)
	if availableLen <= 0 {
		return ""
	}

	if len(id) > availableLen {
		id = id[:availableLen]
	}

	return strings.ToUpper(prefix + id)
}

const (
	UUID_PREFIX_ORGANIZATION     = "org"
	UUID_PREFIX_MEMBERSHIP       = "mem"
	UUID_PREFIX_USER             = "user"
	UUID_PREFIX_ACTIVE_MODULE    = "mod"
	UUID_PREFIX_ACTIVITY         = "act"
	UUID_PREFIX_PROJECT          = "proj"
	UUID_PREFIX_ESTIMATE         = "est"
	UUID_PREFIX_ESTIMATE_SECTION = "sec"
	UUID_PREFIX_LINE_ITEM        = "li"
	UUID_PREFIX_PROPOSAL         = "prop"
	UUID_PREFIX_RFI              = "rfi"
	UUID_PREFIX_SUBMITTAL        = "sub"
	UUID_PREFIX_DOCUMENT         = "doc"
	UUID_PREFIX_DAILY_LOG        = "dlog"
	UUID_PREFIX_SAFETY_INCIDENT  = "inc"
	UUID_PREFIX_DEFICIENCY       = "def"
	UUID_PREFIX_SERVICE_TICKET   = "tkt"
	UUID_PREFIX_WARRANTY_CLAIM   = "wcl"
	UUID_PREFIX_PAYROLL_RUN      = "pay"
	UUID_PREFIX_CLIENT_APPROVAL  = "capp"
	UUID_PREFIX_JOB              = "job"
)

const (
	SHORT_ID_PREFIX_RFI            = "RFI-"
	SHORT_ID_PREFIX_SUBMITTAL      = "SUB-"
	SHORT_ID_PREFIX_PROPOSAL       = "PR-"
	SHORT_ID_PREFIX_SERVICE_TICKET = "ST-"
)
