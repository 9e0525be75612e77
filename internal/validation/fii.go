package validation

import (
	"strings"

	"github.com/fiitrack/fii-portfolio-backend/internal/api/request"
)

// ValidateCreateFii validates a FII catalog creation request.
//
// Required fields:
//   - tag: 1-20 characters
//   - name: 1-255 characters
//
// Optional fields (validated if provided):
//   - sector: at most 100 characters
//   - cut_day: between 1 and 31
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateFii(req request.CreateFiiRequest) error {
	errors := make(map[string]string)

	checkTag(errors, req.Tag)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 255 {
		errors["name"] = "name must be at most 255 characters"
	}

	if req.Sector != nil && len(*req.Sector) > 100 {
		errors["sector"] = "sector must be at most 100 characters"
	}

	if req.CutDay != nil {
		checkCutDay(errors, *req.CutDay)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateFii validates a FII catalog update request.
// All fields are optional, but if provided, they must meet the same
// constraints as create. cut_day 0 is accepted as "clear the policy".
func ValidateUpdateFii(req request.UpdateFiiRequest) error {
	errors := make(map[string]string)

	if req.Tag != nil {
		checkTag(errors, *req.Tag)
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errors["name"] = "name is required"
		} else if len(*req.Name) > 255 {
			errors["name"] = "name must be at most 255 characters"
		}
	}
	if req.Sector != nil && len(*req.Sector) > 100 {
		errors["sector"] = "sector must be at most 100 characters"
	}
	if req.CutDay != nil && *req.CutDay != 0 {
		checkCutDay(errors, *req.CutDay)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

func checkTag(errors map[string]string, tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		errors["tag"] = "tag is required"
	} else if len(tag) > 20 {
		errors["tag"] = "tag must be at most 20 characters"
	}
}

func checkCutDay(errors map[string]string, cutDay int) {
	if cutDay < 1 || cutDay > 31 {
		errors["cutDay"] = "cut_day must be between 1 and 31"
	}
}
