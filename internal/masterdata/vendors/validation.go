package vendors

import (
	"fmt"
	"strings"

	"github.com/stockpilot-erp/stockpilot-erp/internal/platform/httpx"
)

func (s *Service) validate(v Vendor) error {
	if strings.TrimSpace(v.Code) == "" {
		return fmt.Errorf("%w: vendor code is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("%w: vendor name is required", httpx.ErrValidation)
	}
	return nil
}
