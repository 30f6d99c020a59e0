// Package testkit drives REST API tests from JSON scenario files.
//
// Each scenario names the request to fire (method, URL, body file,
// headers), the expected status code and, optionally, the expected
// response body:
//
//	testdata/
//	  create_product.json        ← scenario
//	  create_product_req.json    ← request body
//	  create_product_res.json    ← expected response body
//
// A test hands the real handler and the directory to RunDir:
//
//	func TestAPI(t *testing.T) {
//	    testkit.RunDir(t, handler, "testdata")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scenario describes a single REST API test case loaded from a JSON file.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"`   // GET, POST, PUT, PATCH, DELETE
	RequestURL      string            `json:"requestUrl"`      // e.g. /products/1
	RequestFileName string            `json:"requestFileName"` // JSON request body, relative to the scenario file
	Headers         map[string]string `json:"headers"`

	ResponseFileName   string `json:"responseFileName"`   // expected response JSON, relative to the scenario file
	ExpectedCode       int    `json:"expectedCode"`       // expected HTTP status code
	ExpectedStatusCode int    `json:"expectedStatusCode"` // alias for expectedCode

	// IgnoreFields are dotted paths into the response (data.last_update,
	// data.0.id) whose values are not compared.
	IgnoreFields []string `json:"ignoreFields"`

	// Order places the scenario within its directory; RunDir runs lower
	// values first and breaks ties by file name.
	Order int `json:"order"`

	dir string // directory of the scenario file
}

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}

	s.dir = filepath.Dir(abs)
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		s.ExpectedCode = s.ExpectedStatusCode
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	s.RequestMethod = strings.ToUpper(s.RequestMethod)
	return nil
}

// RequestBodyPath returns the absolute path to the request body file, or
// "" when RequestFileName is not set.
func (s *Scenario) RequestBodyPath() string {
	return s.resolve(s.RequestFileName)
}

// ResponseBodyPath returns the absolute path to the expected response
// file, or "" when ResponseFileName is not set.
func (s *Scenario) ResponseBodyPath() string {
	return s.resolve(s.ResponseFileName)
}

func (s *Scenario) resolve(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// IsScenarioFile reports whether a file in a scenario directory is a
// scenario rather than a request or response body.
func IsScenarioFile(path string) bool {
	base := strings.TrimSuffix(filepath.Base(path), ".json")
	return !strings.HasSuffix(base, "_req") && !strings.HasSuffix(base, "_res")
}

// LoadAllFromDir loads every scenario file in dir, sorted by Order then
// file name. Files that fail to load are returned as errors.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, []error{fmt.Errorf("testkit: glob %q: %w", dir, err)}
	}

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, path := range entries {
		if !IsScenarioFile(path) {
			continue
		}
		s, err := LoadScenario(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, s)
	}
	if len(scenarios) == 0 && len(errs) == 0 {
		return nil, []error{fmt.Errorf("testkit: no scenario files found in %q", dir)}
	}

	// Glob returns names in order; the stable sort keeps it within an Order.
	sort.SliceStable(scenarios, func(i, j int) bool { return scenarios[i].Order < scenarios[j].Order })
	return scenarios, errs
}
