package pumphydraulics

import (
	"embed"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed testdata/friction_coeffs.yaml testdata/appliances.yaml testdata/nozzles.yaml
var embeddedTables embed.FS

// defaultFrictionCoefficient is returned by FrictionCoefficient when the
// requested diameter is absent from the table (§4.A: "a safe mid-range
// default").
const defaultFrictionCoefficient = 2.0

// nozzlePreset is the on-disk shape of one entry in nozzles.yaml.
type nozzlePreset struct {
	Kind              NozzleKind `yaml:"kind"`
	TipIn             float64    `yaml:"tip_in"`
	RatedGPM          float64    `yaml:"rated_gpm"`
	NozzlePressurePSI float64    `yaml:"nozzle_pressure_psi"`
}

// Tables holds the three normalized data tables the engine consults.
// Tables are immutable after construction (§5 shared-resource policy):
// nothing in this package mutates a Tables value once NewTables returns.
type Tables struct {
	frictionCoeffs map[string]float64
	appliances     map[string]float64
	nozzlePresets  map[string]nozzlePreset
}

// NewTables loads the canonical embedded data tables. This is the
// constructor every Engine uses unless a caller supplies overrides via
// NewTablesFromYAML.
func NewTables() (*Tables, error) {
	friction, err := loadYAMLMap(embeddedTables, "testdata/friction_coeffs.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading friction coefficients: %w", err)
	}
	appliances, err := loadYAMLMap(embeddedTables, "testdata/appliances.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading appliance losses: %w", err)
	}
	var presets map[string]nozzlePreset
	raw, err := embeddedTables.ReadFile("testdata/nozzles.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading nozzle presets: %w", err)
	}
	if err := yaml.Unmarshal(raw, &presets); err != nil {
		return nil, fmt.Errorf("parsing nozzle presets: %w", err)
	}
	return &Tables{frictionCoeffs: friction, appliances: appliances, nozzlePresets: presets}, nil
}

// NewTablesFromYAML builds a Tables from caller-supplied YAML bytes,
// one document per table, for a host that wants field-calibrated
// coefficients instead of the canonical IFSTA set (§9 open question).
func NewTablesFromYAML(frictionYAML, appliancesYAML, nozzlesYAML []byte) (*Tables, error) {
	friction := map[string]float64{}
	if len(frictionYAML) > 0 {
		if err := yaml.Unmarshal(frictionYAML, &friction); err != nil {
			return nil, fmt.Errorf("parsing friction coefficients: %w", err)
		}
	}
	appliances := map[string]float64{}
	if len(appliancesYAML) > 0 {
		if err := yaml.Unmarshal(appliancesYAML, &appliances); err != nil {
			return nil, fmt.Errorf("parsing appliance losses: %w", err)
		}
	}
	presets := map[string]nozzlePreset{}
	if len(nozzlesYAML) > 0 {
		if err := yaml.Unmarshal(nozzlesYAML, &presets); err != nil {
			return nil, fmt.Errorf("parsing nozzle presets: %w", err)
		}
	}
	return &Tables{frictionCoeffs: friction, appliances: appliances, nozzlePresets: presets}, nil
}

func loadYAMLMap(fsys embed.FS, path string) (map[string]float64, error) {
	raw, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out := map[string]float64{}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func diameterKey(diameterIn float64) string {
	return strconv.FormatFloat(diameterIn, 'g', -1, 64)
}

// FrictionCoefficient resolves C for use in FL = C*(Q/100)^2*(L/100).
// Fails soft: an unknown diameter yields defaultFrictionCoefficient plus
// an advisory appended to advisories. Pass a nil slice pointer to
// suppress advisory collection (e.g. in a tight inner loop that already
// validated the diameter).
func (t *Tables) FrictionCoefficient(diameterIn float64, advisories *[]Advisory) float64 {
	if c, ok := t.frictionCoeffs[diameterKey(diameterIn)]; ok {
		return c
	}
	if advisories != nil {
		*advisories = append(*advisories, advisoryOf(CodeUnknownHoseCoeff, SeverityWarn,
			fmt.Sprintf("No friction coefficient for %g-inch hose; using default %.2f.", diameterIn, defaultFrictionCoefficient)))
	}
	return defaultFrictionCoefficient
}

// FrictionCoefficientStrict is the strict-mode counterpart: an unknown
// diameter is an InvalidHose error rather than a fallback (§7).
func (t *Tables) FrictionCoefficientStrict(diameterIn float64) (float64, error) {
	if c, ok := t.frictionCoeffs[diameterKey(diameterIn)]; ok {
		return c, nil
	}
	return 0, newValidationError(InvalidHose, "no friction coefficient for %g-inch hose", diameterIn)
}

// ApplianceLoss resolves the psi loss keyed by appliance id. Fails soft:
// an unknown id yields 0 psi plus an advisory.
func (t *Tables) ApplianceLoss(id string, advisories *[]Advisory) float64 {
	if v, ok := t.appliances[id]; ok {
		return v
	}
	if id != "" && advisories != nil {
		*advisories = append(*advisories, advisoryOf(CodeUnknownAppliance, SeverityInfo,
			fmt.Sprintf("Unknown appliance %q; assuming 0 psi loss.", id)))
	}
	return 0
}

// NozzlePreset resolves a catalog nozzle by id.
func (t *Tables) NozzlePreset(id string) (NozzleSpec, bool) {
	p, ok := t.nozzlePresets[id]
	if !ok {
		return NozzleSpec{}, false
	}
	return NozzleSpec{Kind: p.Kind, TipIn: p.TipIn, RatedGPM: p.RatedGPM, NozzlePressurePSI: p.NozzlePressurePSI}, true
}
