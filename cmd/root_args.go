package cmd

import (
	"github.com/aviation-iia/run-endpoint/internal/config"
	"github.com/aviation-iia/run-endpoint/internal/helpers"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.Global.Mode: {
		Name:        "mode",
		Description: "The application runtime mode. Possible values are 'service' and 'lambda'",
		Short:       helpers.Ptr("m"),
	},
	&config.GitHub.Owner: {
		Name:        "github-owner",
		Description: "The account owning the repository whose workflow is dispatched",
		Env:         helpers.Ptr("GH_OWNER"),
	},
	&config.GitHub.Repository: {
		Name:        "github-repository",
		Description: "The repository whose workflow is dispatched",
		Env:         helpers.Ptr("GH_REPO"),
	},
	&config.GitHub.WorkflowFile: {
		Name:        "github-workflow-file",
		Description: "The workflow file identifier passed to the dispatches endpoint",
		Env:         helpers.Ptr("GH_WORKFLOW_FILE"),
	},
	&config.GitHub.WorkflowRef: {
		Name:        "github-workflow-ref",
		Description: "The branch or tag name the workflow run is created on",
		Env:         helpers.Ptr("GH_WORKFLOW_REF"),
	},
	&config.GitHub.AuthMode: {
		Name:        "github-auth-mode",
		Description: "Authentication credentials provider. Supported values are 'token' and 'ssm'.",
		Short:       helpers.Ptr("A"),
	},
	&config.GitHub.SSMKey: {
		Name:        "github-creds-ssm-key",
		Description: "The SSM parameter key to use when fetching credentials",
	},
	&config.GitHub.APIBaseURL: {
		Name:        "github-api-base-url",
		Description: "The upstream API base URL",
		Hidden:      true,
	},
	&config.Global.CORS.AllowOrigin: {
		Name:        "cors-allow-origin",
		Description: "The value of the Access-Control-Allow-Origin response header",
	},
	&config.Global.S3.Receipt.BucketName: {
		Name:        "dispatch-receipt-s3-bucket",
		Description: "The S3 bucket to use when uploading dispatch receipts",
		Env:         helpers.Ptr("DISPATCH_RECEIPT_S3_BUCKET"),
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.Logging.CallerTrace: {
		Name:        "verbosity-caller-trace",
		Description: "Enable caller trace in logs",
		Short:       helpers.Ptr("V"),
	},
	&config.Global.FetchRateLimits: {
		Name:        "fetch-rate-limits",
		Description: "Enable periodic reporting of upstream API rate limits",
	},
	&config.Global.S3.Receipt.Enabled: {
		Name:        "dispatch-receipt-s3-upload",
		Description: "Enable S3 upload of dispatch receipts",
		Env:         helpers.Ptr("DISPATCH_RECEIPT_S3_UPLOAD"),
	},
}

var envMapCount = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default WarnLevel)",
		Short:       helpers.Ptr("v"),
	},
}
