package gamedata

import (
	"errors"
	"log"

	"github.com/samdwyer/officehub/internal/scene"
)

// ScenesFile represents the structure of scenes.yaml.
type ScenesFile struct {
	Name    string        `yaml:"name"`
	Entries []scene.Entry `yaml:"entries"`
}

// LoadSceneRegistry builds the content-unit registry from the embedded
// scenes.yaml.
func LoadSceneRegistry(logger *log.Logger) (*scene.Registry, error) {
	file, err := LoadYAML[ScenesFile]("scenes.yaml")
	if err != nil {
		return nil, err
	}
	if len(file.Entries) == 0 {
		return nil, errors.New("no entries loaded from scenes.yaml")
	}
	return scene.NewRegistry(file.Name, file.Entries, logger), nil
}
