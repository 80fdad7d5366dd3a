// Package catalog decodes catalog documents and replays them into a credits index.
//
// A catalog declares works and participants with their optional attributes, then lists the
// steps to apply in order. Steps may reference names that were not declared; those become
// entities with a name only.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/guregu/null"
	"github.com/pelletier/go-toml"
	"github.com/stellar/go-stellar-sdk/support/log"
	"gopkg.in/yaml.v3"

	"github.com/stellar/credits-index/internal/credits"
	"github.com/stellar/credits-index/internal/entities"
	"github.com/stellar/credits-index/internal/utils"
	"github.com/stellar/credits-index/internal/validators"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	ErrInvalidCatalog    = errors.New("invalid catalog")
	ErrUnknownOperation  = errors.New("unknown catalog operation")
)

type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

type Operation string

const (
	OperationRelease Operation = "release"
	OperationTag     Operation = "tag"
	OperationRemove  Operation = "remove"
)

type WorkSpec struct {
	Name        string `toml:"name"         yaml:"name"         validate:"not_empty"`
	Director    string `toml:"director"     yaml:"director"`
	ReleaseDate string `toml:"release_date" yaml:"release_date" validate:"omitempty,date"`
}

type ParticipantSpec struct {
	Name      string `toml:"name"       yaml:"name"       validate:"not_empty"`
	Birthdate string `toml:"birthdate"  yaml:"birthdate"  validate:"omitempty,date"`
	BirthCity string `toml:"birth_city" yaml:"birth_city"`
}

type Step struct {
	Op           string   `toml:"op"           yaml:"op"           validate:"oneof=release tag remove"`
	Work         string   `toml:"work"         yaml:"work"         validate:"not_empty"`
	Participants []string `toml:"participants" yaml:"participants" validate:"dive,not_empty"`
}

type Catalog struct {
	Works        []WorkSpec        `toml:"works"        yaml:"works"        validate:"unique=Name,dive"`
	Participants []ParticipantSpec `toml:"participants" yaml:"participants" validate:"unique=Name,dive"`
	Steps        []Step            `toml:"steps"        yaml:"steps"        validate:"dive"`
}

// ApplyResult counts the steps replayed by Apply. Missed counts removals of works the index
// did not know.
type ApplyResult struct {
	Released int
	Tagged   int
	Removed  int
	Missed   int
}

func (r ApplyResult) Total() int {
	return r.Released + r.Tagged + r.Removed + r.Missed
}

var validate = newCatalogValidator()

func newCatalogValidator() *validator.Validate {
	v := validators.NewValidator()
	v.RegisterStructValidation(stepStructLevelValidation, Step{})
	return v
}

// stepStructLevelValidation checks the participant count each operation expects.
func stepStructLevelValidation(sl validator.StructLevel) {
	step, ok := sl.Current().Interface().(Step)
	if !ok {
		return
	}

	switch Operation(step.Op) {
	case OperationTag:
		if len(step.Participants) != 1 {
			sl.ReportError(step.Participants, "Participants", "Participants", "len", "1")
		}
	case OperationRemove:
		if len(step.Participants) != 0 {
			sl.ReportError(step.Participants, "Participants", "Participants", "len", "0")
		}
	}
}

// Load reads and decodes the catalog at path, picking the format from its extension.
func Load(ctx context.Context, path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer utils.DeferredClose(ctx, file, "closing catalog file")

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	log.Ctx(ctx).Debugf("loaded catalog %s: %d works, %d participants, %d steps", path, len(c.Works), len(c.Participants), len(c.Steps))
	return c, nil
}

// Parse decodes a catalog document and validates it.
func Parse(data []byte, format Format) (*Catalog, error) {
	c := &Catalog{}

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("decoding TOML: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("decoding YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, validators.FormatFieldErrors(validators.ParseValidationError(vErrs)))
	}
	return fmt.Errorf("validating catalog: %w", err)
}

// Apply validates the catalog and replays its steps into idx, in order. It stops at the
// first failing step or when ctx is done; the result counts the steps applied so far.
func (c *Catalog) Apply(ctx context.Context, idx *credits.Index) (ApplyResult, error) {
	var result ApplyResult

	if err := c.Validate(); err != nil {
		return result, err
	}

	r, err := c.newResolver()
	if err != nil {
		return result, err
	}

	for i, step := range c.Steps {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("applying step %d: %w", i, err)
		}

		work, err := r.resolveWork(step.Work)
		if err != nil {
			return result, fmt.Errorf("applying step %d: %w", i, err)
		}
		participants, err := r.resolveParticipants(step.Participants)
		if err != nil {
			return result, fmt.Errorf("applying step %d: %w", i, err)
		}

		switch Operation(step.Op) {
		case OperationRelease:
			idx.Release(work, participants)
			result.Released++
		case OperationTag:
			idx.Tag(work, participants[0])
			result.Tagged++
		case OperationRemove:
			if idx.Remove(work) {
				result.Removed++
			} else {
				log.Ctx(ctx).Warnf("step %d: work %q is not in the index, nothing to remove", i, work.Name())
				result.Missed++
			}
		default:
			return result, fmt.Errorf("applying step %d: %w: %q", i, ErrUnknownOperation, step.Op)
		}

		log.Ctx(ctx).Debugf("step %d: %s %q with %d participant(s)", i, step.Op, work.Name(), len(participants))
	}

	return result, nil
}

// resolver turns names into entities, using the declared attributes when there are some.
type resolver struct {
	works        map[string]entities.Work
	participants map[string]entities.Participant
}

func (c *Catalog) newResolver() (*resolver, error) {
	r := &resolver{
		works:        make(map[string]entities.Work, len(c.Works)),
		participants: make(map[string]entities.Participant, len(c.Participants)),
	}

	for _, spec := range c.Works {
		work, err := spec.toEntity()
		if err != nil {
			return nil, fmt.Errorf("declaring work %q: %w", spec.Name, err)
		}
		r.works[work.Key()] = work
	}

	for _, spec := range c.Participants {
		participant, err := spec.toEntity()
		if err != nil {
			return nil, fmt.Errorf("declaring participant %q: %w", spec.Name, err)
		}
		r.participants[participant.Key()] = participant
	}

	return r, nil
}

func (r *resolver) resolveWork(name string) (entities.Work, error) {
	if work, ok := r.works[name]; ok {
		return work, nil
	}
	work, err := entities.NewWork(name, null.String{}, null.Time{})
	if err != nil {
		return entities.Work{}, fmt.Errorf("resolving work: %w", err)
	}
	r.works[name] = work
	return work, nil
}

func (r *resolver) resolveParticipants(names []string) ([]entities.Participant, error) {
	participants := make([]entities.Participant, 0, len(names))
	for _, name := range names {
		participant, ok := r.participants[name]
		if !ok {
			var err error
			participant, err = entities.NewParticipant(name, null.Time{}, null.String{})
			if err != nil {
				return nil, fmt.Errorf("resolving participant: %w", err)
			}
			r.participants[name] = participant
		}
		participants = append(participants, participant)
	}
	return participants, nil
}

func (s WorkSpec) toEntity() (entities.Work, error) {
	releaseDate, err := parseDate(s.ReleaseDate)
	if err != nil {
		return entities.Work{}, fmt.Errorf("parsing release date: %w", err)
	}
	return entities.NewWork(s.Name, optionalString(s.Director), releaseDate)
}

func (s ParticipantSpec) toEntity() (entities.Participant, error) {
	birthdate, err := parseDate(s.Birthdate)
	if err != nil {
		return entities.Participant{}, fmt.Errorf("parsing birthdate: %w", err)
	}
	return entities.NewParticipant(s.Name, birthdate, optionalString(s.BirthCity))
}

func optionalString(s string) null.String {
	return null.NewString(s, s != "")
}

func parseDate(s string) (null.Time, error) {
	if s == "" {
		return null.Time{}, nil
	}
	t, err := time.Parse(validators.DateLayout, s)
	if err != nil {
		return null.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return null.TimeFrom(t), nil
}
