package infra

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var modelText string

//go:embed policy.csv
var policyText string

// NewEnforcer builds an enforcer from the embedded model and role policy.
func NewEnforcer() (*casbin.Enforcer, error) {
	return NewEnforcerFromText(modelText, policyText)
}

func NewEnforcerFromText(modelConf, policy string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelConf)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	if err := loadPolicy(e, policy); err != nil {
		return nil, err
	}
	return e, nil
}

func loadPolicy(e *casbin.Enforcer, policy string) error {
	for n, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		var err error
		switch fields[0] {
		case "p":
			_, err = e.AddPolicy(toAny(fields[1:])...)
		case "g":
			_, err = e.AddGroupingPolicy(toAny(fields[1:])...)
		default:
			err = fmt.Errorf("unknown policy type %q", fields[0])
		}
		if err != nil {
			return fmt.Errorf("policy line %d: %w", n+1, err)
		}
	}
	return nil
}

func toAny(v []string) []any {
	out := make([]any, len(v))
	for i, s := range v {
		out[i] = s
	}
	return out
}
