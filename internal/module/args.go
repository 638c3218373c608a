package module

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"sigs.k8s.io/yaml"

	"github.com/imamik/snapimage/internal/snapshot"
)

// DefaultWaitTimeout is used when wait_timeout is not given, in seconds.
const DefaultWaitTimeout = 300

// Bool accepts JSON booleans and the strings yes/no, on/off, true/false, 1/0.
type Bool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bool) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		*b = Bool(t)
		return nil
	case float64:
		if t == 0 || t == 1 {
			*b = t == 1
			return nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "on", "true", "1", "y":
			*b = true
			return nil
		case "no", "off", "false", "0", "n", "":
			*b = false
			return nil
		}
	}
	return fmt.Errorf("%s is not a valid boolean", string(data))
}

// Int accepts JSON numbers and numeric strings.
type Int int

// UnmarshalJSON implements json.Unmarshaler.
func (i *Int) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		if t == float64(int(t)) {
			*i = Int(t)
			return nil
		}
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err == nil {
			*i = Int(n)
			return nil
		}
	}
	return fmt.Errorf("%s is not a valid integer", string(data))
}

// Args are the module parameters.
type Args struct {
	InstanceID   string            `json:"instance_id"`
	InstanceName string            `json:"instance_name"`
	Meta         map[string]string `json:"meta"`
	ImageName    string            `json:"image_name"`
	State        string            `json:"state"`
	Wait         Bool              `json:"wait"`
	WaitTimeout  *Int              `json:"wait_timeout"`

	BoundCreateWait Bool `json:"bound_create_wait"`

	APIToken    string `json:"api_token"`
	Credentials string `json:"credentials"`
	Endpoint    string `json:"endpoint"`
}

var supportedKeys = []string{
	"api_token", "bound_create_wait", "credentials", "endpoint",
	"image_name", "instance_id", "instance_name", "meta",
	"state", "wait", "wait_timeout",
}

// LoadArgs reads and parses the argument file at path.
func LoadArgs(path string) (*Args, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read arguments file: %w", err)
	}
	return ParseArgs(data)
}

// ParseArgs parses JSON or YAML arguments and applies defaults. Keys with
// an _ansible_ prefix are ignored; any other unknown key is an error.
func ParseArgs(data []byte) (*Args, error) {
	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("arguments must be a mapping: %w", err)
	}

	unknown := lo.Filter(lo.Keys(fields), func(k string, _ int) bool {
		return !strings.HasPrefix(k, "_ansible_") && !lo.Contains(supportedKeys, k)
	})
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unsupported parameters: %s (supported: %s)",
			strings.Join(unknown, ", "), strings.Join(supportedKeys, ", "))
	}

	var args Args
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	args.applyDefaults()
	return &args, nil
}

func (a *Args) applyDefaults() {
	if a.State == "" {
		a.State = string(snapshot.StatePresent)
	}
	if a.WaitTimeout == nil {
		d := Int(DefaultWaitTimeout)
		a.WaitTimeout = &d
	}
}

// ToRequest converts the arguments into a reconciliation request.
func (a *Args) ToRequest() (snapshot.Request, error) {
	timeout := DefaultWaitTimeout
	if a.WaitTimeout != nil {
		timeout = int(*a.WaitTimeout)
	}
	if timeout < 0 {
		return snapshot.Request{}, &snapshot.ValidationError{Field: "wait_timeout", Message: "must not be negative"}
	}

	req := snapshot.Request{
		InstanceID:      a.InstanceID,
		InstanceName:    a.InstanceName,
		ImageName:       a.ImageName,
		Metadata:        a.Meta,
		State:           snapshot.State(a.State),
		Wait:            bool(a.Wait),
		WaitTimeout:     time.Duration(timeout) * time.Second,
		BoundCreateWait: bool(a.BoundCreateWait),
	}
	if err := req.Validate(); err != nil {
		return snapshot.Request{}, err
	}
	return req, nil
}
