package errors

import "net/http"

var (
	ErrInvalidLayer = New(
		"INVALID_LAYER",
		"Unknown boundary layer, expected one of: zip, ward, community",
		http.StatusBadRequest,
	)

	ErrDashboardNotReady = New(
		"DASHBOARD_NOT_READY",
		"No successful pipeline run yet",
		http.StatusServiceUnavailable,
	)

	ErrRefreshInProgress = New(
		"REFRESH_IN_PROGRESS",
		"Pipeline refresh already running",
		http.StatusConflict,
	)

	ErrPipelineFailed = New(
		"PIPELINE_FAILED",
		"Pipeline run failed",
		http.StatusBadGateway,
	)

	ErrRunNotFound = New(
		"RUN_NOT_FOUND",
		"Run not found in archive",
		http.StatusNotFound,
	)

	ErrArchiveDisabled = New(
		"ARCHIVE_DISABLED",
		"Run archive is disabled",
		http.StatusNotFound,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
