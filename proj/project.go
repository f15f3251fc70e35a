// Package proj loads and validates twkl project files.
package proj

import (
	"io/ioutil"
	"path/filepath"

	"github.com/yohashinoio/twkl/report"

	"github.com/pelletier/go-toml"
)

// ProjectFileName is the name of the project file at a project root.
const ProjectFileName = "twkl.toml"

// tomlProject represents a twkl project as it is encoded in TOML.
type tomlProject struct {
	Name     string   `toml:"name"`
	Version  string   `toml:"version"`
	OptLevel int      `toml:"opt-level"`
	Emit     string   `toml:"emit"`
	Sources  []string `toml:"sources"`
}

// Project is a loaded and validated twkl project.
type Project struct {
	// AbsPath is the absolute path of the project root directory.
	AbsPath string

	Name     string
	Version  string
	OptLevel int

	// Emit selects the kind of output produced by a build.  It may be
	// overridden from the command line.
	Emit string

	// Sources are the absolute paths of the project's source files.
	Sources []string
}

// LoadProject loads and validates the project rooted at abspath.  Errors
// here are configuration errors and therefore fatal.
func LoadProject(abspath string) *Project {
	buff, err := ioutil.ReadFile(filepath.Join(abspath, ProjectFileName))
	if err != nil {
		report.ReportFatal("unable to read project file at `%s`: %s", abspath, err.Error())
	}

	tomlProj := &tomlProject{}
	if err := toml.Unmarshal(buff, tomlProj); err != nil {
		report.ReportFatal("error parsing project file at `%s`: %s", abspath, err.Error())
	}

	if tomlProj.Name == "" {
		report.ReportFatal("project at `%s` is missing a name", abspath)
	}

	if tomlProj.Emit == "" {
		tomlProj.Emit = "llvm"
	}

	project := &Project{
		AbsPath:  abspath,
		Name:     tomlProj.Name,
		Version:  tomlProj.Version,
		OptLevel: tomlProj.OptLevel,
		Emit:     tomlProj.Emit,
	}

	// An absent source list means every twkl file under the project root.
	patterns := tomlProj.Sources
	if len(patterns) == 0 {
		patterns = []string{"*.twkl"}
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(abspath, pattern))
		if err != nil {
			report.ReportFatal("invalid source pattern `%s`: %s", pattern, err.Error())
		}

		project.Sources = append(project.Sources, matches...)
	}

	if len(project.Sources) == 0 {
		report.ReportFatal("project `%s` has no source files", project.Name)
	}

	return project
}
