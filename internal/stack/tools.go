package stack

import (
	"os/exec"

	"github.com/lakeup/lakeup/internal/provisioning"
)

// optionalCLIs are convenience tools for operators poking at the stack
// after bring-up. Their absence is worth a warning, never a failure.
var optionalCLIs = []string{"mc", "spark-submit"}

// toolInstallStep registers the chart repositories the pipeline pulls
// from and checks for the operator CLIs. Advisory: repositories can
// also be resolved per install, and the CLIs are not needed by the
// pipeline itself.
func toolInstallStep() provisioning.Step {
	return provisioning.Step{
		ID:       StepToolInstall,
		Critical: false,
		Run: func(pctx *provisioning.Context) error {
			repos := make(map[string]string)
			for name := range defaultChartSpecs {
				s := chartSpec(name, pctx.Config)
				repos[s.RepoName] = s.Repository
			}

			for repoName, url := range repos {
				if err := pctx.Releases.AddRepo(repoName, url); err != nil {
					return &provisioning.ExternalCallError{
						Collaborator: "chart-installer",
						Op:           "add repo " + repoName,
						Err:          err,
					}
				}
				pctx.Observer.Printf("registered chart repository %s (%s)", repoName, url)
			}

			for _, cli := range optionalCLIs {
				if _, err := exec.LookPath(cli); err != nil {
					pctx.Observer.Printf("optional CLI %q not found on PATH", cli)
				}
			}
			return nil
		},
	}
}
