package request

import (
	"fmt"

	"github.com/reusedev/sbi-hub/internal/modules/preference"
)

type GetPreferences struct {
	ClientId string `form:"client_id"`
}

type PutPreferences struct {
	ClientId string            `json:"client_id"`
	Values   map[string]string `json:"values"`
}

func (p *PutPreferences) Valid() error {
	if p.ClientId == "" {
		return fmt.Errorf("client_id is required")
	}
	if len(p.Values) == 0 {
		return fmt.Errorf("values is required")
	}
	return preference.Validate(p.Values)
}
