// Package leagueapi provides typed access to the league backend's REST
// resources on top of apiclient.
package leagueapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/codr1/leaguedesk/internal/apiclient"
	"github.com/codr1/leaguedesk/internal/validation"
)

const defaultPhoneRegion = "US"

type API struct {
	client      *apiclient.Client
	phoneRegion string
}

// New wraps client. phoneRegion is the ISO region used to read player phone
// numbers entered without a country code.
func New(client *apiclient.Client, phoneRegion string) *API {
	phoneRegion = strings.ToUpper(strings.TrimSpace(phoneRegion))
	if phoneRegion == "" {
		phoneRegion = defaultPhoneRegion
	}
	return &API{client: client, phoneRegion: phoneRegion}
}

func resourcePath(segments ...any) string {
	var b strings.Builder
	for _, segment := range segments {
		b.WriteByte('/')
		switch v := segment.(type) {
		case string:
			b.WriteString(url.PathEscape(v))
		case int64:
			b.WriteString(strconv.FormatInt(v, 10))
		case int:
			b.WriteString(strconv.Itoa(v))
		default:
			b.WriteString(url.PathEscape(fmt.Sprint(v)))
		}
	}
	return b.String()
}

// requireID reports a non-positive resource ID as a field error so callers
// can answer with the same status as a failed payload validation.
func requireID(field string, id int64) error {
	if id <= 0 {
		return validation.Errors{{Field: field, Reason: "must be a positive integer"}}
	}
	return nil
}
