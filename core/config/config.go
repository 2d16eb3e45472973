package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"

	// CaseDirPlaceholder is replaced with the absolute case directory in
	// external command templates.
	CaseDirPlaceholder = "{case_dir}"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs afero.Fs

	PromptUser string `json:"prompt_user" validate:"required"`
	PromptHost string `json:"prompt_host" validate:"required"`
	CaseDir    string `json:"case_dir" validate:"required"`
	Color      string `json:"color" validate:"oneof=always auto never"`
	MaxArgs    int    `json:"max_args" validate:"gte=2,lte=4096"`
	AppLog     string `json:"app_log"`
	EventLog   string `json:"event_log"`

	Diagnostics Diagnostics `json:"diagnostics"`

	External map[string][]string `json:"external" validate:"dive,keys,required,endkeys,min=1,dive,required"`
}

// Diagnostics configures the process creation demonstrations.
type Diagnostics struct {
	ForkbombChildren int `json:"forkbomb_children" validate:"gte=1,lte=64"`
	SpawnChildren    int `json:"spawn_children" validate:"gte=1,lte=64"`
	ChildLifetimeMs  int `json:"child_lifetime_ms" validate:"gte=0,lte=60000"`
	WaitDemoExitCode int `json:"wait_demo_exit_code" validate:"gte=0,lte=255"`
}

// ChildLifetime is how long demonstration children sleep before exiting.
func (d Diagnostics) ChildLifetime() time.Duration {
	return time.Duration(d.ChildLifetimeMs) * time.Millisecond
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	if err := validate.Struct(c); err != nil {
		return err
	}

	for name := range c.External {
		if strings.ContainsAny(name, "|> \t") {
			return fmt.Errorf("external: invalid command name %q", name)
		}
	}
	return nil
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// ResolveCaseDir makes CaseDir absolute so later working directory changes
// don't move the evidence.
func (c *Configuration) ResolveCaseDir() error {
	abs, err := filepath.Abs(c.CaseDir)
	if err != nil {
		return err
	}
	c.CaseDir = abs
	return nil
}

// CaseFiles returns a filesystem rooted at the case directory, creating the
// directory if needed.
func (c *Configuration) CaseFiles() (afero.Fs, error) {
	if err := os.MkdirAll(c.CaseDir, 0755); err != nil {
		return nil, err
	}
	return afero.NewBasePathFs(afero.NewOsFs(), c.CaseDir), nil
}

// ExternalArgv expands the template for an external command. ok is false if
// name isn't an external command.
func (c *Configuration) ExternalArgv(name string, args []string) (argv []string, ok bool) {
	tmpl, ok := c.External[name]
	if !ok {
		return nil, false
	}

	for _, word := range tmpl {
		argv = append(argv, strings.ReplaceAll(word, CaseDirPlaceholder, c.CaseDir))
	}
	return append(argv, args...), true
}

// OpenAppLog opens the diagnostic log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	return c.fs().OpenFile(c.AppLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.EventLog, os.O_RDONLY, 0600)
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) (*Configuration, error) {
	out := defaultConfig()
	if err := out.setDir(dir); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Configuration) setDir(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	c.configFs = afero.NewBasePathFs(afero.NewOsFs(), abs)
	return nil
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
