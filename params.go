package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/aiharness/toolserver-contract-tests/framework"
	"github.com/aiharness/toolserver-contract-tests/servicedef"
	"github.com/aiharness/toolserver-contract-tests/tooltests"
)

const (
	defaultPort = 8787
	defaultHost = "127.0.0.1"
	envPrefix   = "TOOLHARNESS"
)

type commandParams struct {
	serviceURL   string
	host         string
	port         int
	projectID    string
	tempDir      string
	selfTestPath string
	configFile   string
	filters      framework.RegexFilters
	debug        bool
	debugAll     bool
	summary      bool
}

// fileParams is the format of the optional YAML configuration file.
type fileParams struct {
	URL          string `yaml:"url"`
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Project      string `yaml:"project"`
	TempDir      string `yaml:"temp_dir"`
	SelfTestPath string `yaml:"self_test_path"`
}

// envParams is read from TOOLHARNESS_* environment variables.
type envParams struct {
	URL          string `envconfig:"URL"`
	Host         string `envconfig:"HOST"`
	Port         int    `envconfig:"PORT"`
	Project      string `envconfig:"PROJECT"`
	TempDir      string `envconfig:"TEMP_DIR"`
	SelfTestPath string `envconfig:"SELF_TEST_PATH"`
}

func (c *commandParams) bindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.serviceURL, "url", "", "tool server base URL (overrides --host and --port)")
	fs.StringVar(&c.host, "host", defaultHost, "tool server hostname")
	fs.IntVar(&c.port, "port", defaultPort, "tool server HTTP port")
	fs.StringVar(&c.projectID, "project", servicedef.DefaultProjectID, "project ID to test against")
	fs.StringVar(&c.tempDir, "temp-dir", tooltests.DefaultTempDir,
		"directory for test files; must be visible to both the harness and the server")
	fs.StringVar(&c.selfTestPath, "self-test-path", "", "project_path for the server self-test (default: --temp-dir)")
	fs.StringVar(&c.configFile, "config", "", "YAML file with default values for the options above")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.BoolVar(&c.summary, "summary", false, "print a table of results at the end")
}

// resolve fills in any option that was not given on the command line from the environment,
// then from the configuration file, and checks that the result is usable.
func (c *commandParams) resolve(fs *pflag.FlagSet) error {
	var file fileParams
	if c.configFile != "" {
		data, err := os.ReadFile(c.configFile)
		if err != nil {
			return fmt.Errorf("could not read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("invalid config file %s: %w", c.configFile, err)
		}
	}
	var env envParams
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return err
	}

	pickString(fs, "url", &c.serviceURL, env.URL, file.URL)
	pickString(fs, "host", &c.host, env.Host, file.Host)
	pickInt(fs, "port", &c.port, env.Port, file.Port)
	pickString(fs, "project", &c.projectID, env.Project, file.Project)
	pickString(fs, "temp-dir", &c.tempDir, env.TempDir, file.TempDir)
	pickString(fs, "self-test-path", &c.selfTestPath, env.SelfTestPath, file.SelfTestPath)

	if c.serviceURL != "" {
		u, err := url.Parse(c.serviceURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid URL %q", c.serviceURL)
		}
	} else if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port %d", c.port)
	}
	if c.projectID == "" {
		return errors.New("project ID cannot be empty")
	}
	if c.tempDir == "" {
		return errors.New("temp directory cannot be empty")
	}
	return nil
}

func pickString(fs *pflag.FlagSet, name string, target *string, fallbacks ...string) {
	if fs.Changed(name) {
		return
	}
	for _, f := range fallbacks {
		if f != "" {
			*target = f
			return
		}
	}
}

func pickInt(fs *pflag.FlagSet, name string, target *int, fallbacks ...int) {
	if fs.Changed(name) {
		return
	}
	for _, f := range fallbacks {
		if f != 0 {
			*target = f
			return
		}
	}
}

func (c commandParams) baseURL() string {
	if c.serviceURL != "" {
		return strings.TrimSuffix(c.serviceURL, "/")
	}
	return fmt.Sprintf("http://%s:%d", c.host, c.port)
}

// reproduceCommand returns a shell command line that runs only the specified test against the
// same server, with debug output.
func (c commandParams) reproduceCommand(id framework.TestID) string {
	var b commandBuilder
	b.add(programName)
	if c.serviceURL != "" {
		b.add("--url", c.serviceURL)
	} else {
		b.add("--host", c.host, "--port", strconv.Itoa(c.port))
	}
	b.add("--project", c.projectID, "--temp-dir", c.tempDir)
	if c.selfTestPath != "" {
		b.add("--self-test-path", c.selfTestPath)
	}
	b.add("--run", "^"+regexp.QuoteMeta(id.String())+"$", "--debug")
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
