package env

import (
	"net/url"
	"os"
	"strconv"

	"github.com/huti-dev/huti/pathutil"
)

// Actions is a typed view of the GitHub Actions environment. Zero values
// mean the variable was unset, so outside a workflow run every field is
// zero and CI is false.
//
// The workflow run URL can be built as
// GitHubServerURL/GitHubRepository/actions/runs/GitHubRunID.
type Actions struct {
	CI bool

	GitHubAction           string
	GitHubActionPath       pathutil.Path
	GitHubActionRepository string
	GitHubActions          bool
	GitHubActor            string
	GitHubAPIURL           *url.URL
	GitHubBaseRef          string
	GitHubEnv              pathutil.Path
	GitHubEventName        string
	GitHubEventPath        pathutil.Path
	GitHubGraphQLURL       *url.URL
	GitHubHeadRef          string
	GitHubJob              string
	GitHubPath             pathutil.Path
	GitHubRef              string
	GitHubRefName          string
	GitHubRefProtected     bool
	GitHubRefType          string
	GitHubRepository       string
	GitHubRepositoryOwner  string
	GitHubRetentionDays    int
	GitHubRunAttempt       int
	GitHubRunID            int
	GitHubRunNumber        int
	GitHubServerURL        *url.URL
	GitHubSHA              string
	GitHubWorkflow         string
	GitHubWorkspace        pathutil.Path

	RunnerArch      string
	RunnerName      string
	RunnerOS        string
	RunnerTemp      pathutil.Path
	RunnerToolCache pathutil.Path
}

func actionURL(name string) *url.URL {
	value := os.Getenv(name)
	if value == "" {
		return nil
	}
	u, err := url.Parse(value)
	if err != nil {
		return nil
	}
	return u
}

// LoadActions reads the GitHub Actions variables from the environment.
func LoadActions() *Actions {
	return &Actions{
		CI: BoolVar("CI", false),

		GitHubAction:           os.Getenv("GITHUB_ACTION"),
		GitHubActionPath:       pathutil.Path(os.Getenv("GITHUB_ACTION_PATH")),
		GitHubActionRepository: os.Getenv("GITHUB_ACTION_REPOSITORY"),
		GitHubActions:          BoolVar("GITHUB_ACTIONS", false),
		GitHubActor:            os.Getenv("GITHUB_ACTOR"),
		GitHubAPIURL:           actionURL("GITHUB_API_URL"),
		GitHubBaseRef:          os.Getenv("GITHUB_BASE_REF"),
		GitHubEnv:              pathutil.Path(os.Getenv("GITHUB_ENV")),
		GitHubEventName:        os.Getenv("GITHUB_EVENT_NAME"),
		GitHubEventPath:        pathutil.Path(os.Getenv("GITHUB_EVENT_PATH")),
		GitHubGraphQLURL:       actionURL("GITHUB_GRAPHQL_URL"),
		GitHubHeadRef:          os.Getenv("GITHUB_HEAD_REF"),
		GitHubJob:              os.Getenv("GITHUB_JOB"),
		GitHubPath:             pathutil.Path(os.Getenv("GITHUB_PATH")),
		GitHubRef:              os.Getenv("GITHUB_REF"),
		GitHubRefName:          os.Getenv("GITHUB_REF_NAME"),
		GitHubRefProtected:     BoolVar("GITHUB_REF_PROTECTED", false),
		GitHubRefType:          os.Getenv("GITHUB_REF_TYPE"),
		GitHubRepository:       os.Getenv("GITHUB_REPOSITORY"),
		GitHubRepositoryOwner:  os.Getenv("GITHUB_REPOSITORY_OWNER"),
		GitHubRetentionDays:    IntVar("GITHUB_RETENTION_DAYS", 0),
		GitHubRunAttempt:       IntVar("GITHUB_RUN_ATTEMPT", 0),
		GitHubRunID:            IntVar("GITHUB_RUN_ID", 0),
		GitHubRunNumber:        IntVar("GITHUB_RUN_NUMBER", 0),
		GitHubServerURL:        actionURL("GITHUB_SERVER_URL"),
		GitHubSHA:              os.Getenv("GITHUB_SHA"),
		GitHubWorkflow:         os.Getenv("GITHUB_WORKFLOW"),
		GitHubWorkspace:        pathutil.Path(os.Getenv("GITHUB_WORKSPACE")),

		RunnerArch:      os.Getenv("RUNNER_ARCH"),
		RunnerName:      os.Getenv("RUNNER_NAME"),
		RunnerOS:        os.Getenv("RUNNER_OS"),
		RunnerTemp:      pathutil.Path(os.Getenv("RUNNER_TEMP")),
		RunnerToolCache: pathutil.Path(os.Getenv("RUNNER_TOOL_CACHE")),
	}
}

// RunURL builds the workflow run URL, or "" outside a workflow.
func (a *Actions) RunURL() string {
	if a.GitHubServerURL == nil || a.GitHubRepository == "" || a.GitHubRunID == 0 {
		return ""
	}
	u := *a.GitHubServerURL
	u.Path = "/" + a.GitHubRepository + "/actions/runs/" + strconv.Itoa(a.GitHubRunID)
	return u.String()
}
