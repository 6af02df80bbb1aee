// Package seed provides the activity catalogue loaded into the registry at startup.
package seed

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/viper"

	"github.com/noah-isme/gema-activities/internal/models"
)

//go:embed activities.schema.json
var catalogueSchema string

const schemaURL = "activities.schema.json"

// ErrDuplicateActivity indicates a seed file lists the same activity name twice.
var ErrDuplicateActivity = errors.New("duplicate activity name in seed catalogue")

// Defaults returns the built-in catalogue.
func Defaults() []models.Activity {
	return []models.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Soccer Team",
			Description:     "Train and compete in inter-school soccer matches",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 22,
			Participants:    []string{"liam@mergington.edu", "noah@mergington.edu"},
		},
		{
			Name:            "Basketball Team",
			Description:     "Practice drills and play in the school basketball league",
			Schedule:        "Wednesdays and Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"ava@mergington.edu", "mia@mergington.edu"},
		},
		{
			Name:            "Art Club",
			Description:     "Explore painting, drawing and mixed media projects",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Act, direct and produce the school plays",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"ella@mergington.edu", "scarlett@mergington.edu"},
		},
		{
			Name:            "Math Club",
			Description:     "Solve challenging problems and prepare for math competitions",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"james@mergington.edu", "benjamin@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Develop public speaking and argumentation skills",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
		},
	}
}

// Load returns the catalogue from path, or the defaults when path is empty.
// The file format follows its extension (json, yaml, toml).
func Load(path string) ([]models.Activity, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Defaults(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	if err := validate(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("invalid seed file %s: %w", path, err)
	}

	var activities []models.Activity
	if err := v.UnmarshalKey("activities", &activities); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	return normalize(activities)
}

func validate(settings map[string]interface{}) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(catalogueSchema)); err != nil {
		return err
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return err
	}

	// Round-trip through JSON so numbers and maps take the shapes the validator expects.
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	var document interface{}
	if err := json.Unmarshal(raw, &document); err != nil {
		return err
	}

	return schema.Validate(document)
}

func normalize(activities []models.Activity) ([]models.Activity, error) {
	policy := bluemonday.StrictPolicy()
	seen := make(map[string]struct{}, len(activities))

	result := make([]models.Activity, 0, len(activities))
	for _, activity := range activities {
		activity.Name = strings.TrimSpace(activity.Name)
		if _, ok := seen[activity.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateActivity, activity.Name)
		}
		seen[activity.Name] = struct{}{}

		activity.Description = sanitize(policy, activity.Description)
		activity.Schedule = sanitize(policy, activity.Schedule)
		if activity.Participants == nil {
			activity.Participants = []string{}
		}
		result = append(result, activity)
	}

	return result, nil
}

// sanitize decodes entities before applying the policy so encoded markup is
// stripped too. The result is HTML-escaped text.
func sanitize(policy *bluemonday.Policy, value string) string {
	return strings.TrimSpace(policy.Sanitize(html.UnescapeString(value)))
}
