package errors

// Sentinel errors for the component update reconciliation engine, one per
// entry in the error taxonomy. Each carries its recoverability class so
// callers can branch on IsSkippable/IsTransient/IsFatal instead of matching
// on Code directly.
var (
	// ErrNetwork is a transport-level failure reaching the KDE Store API.
	ErrNetwork = New(DomainNetwork, "network", Transient, "network request failed")

	// ErrRateLimited is returned when the store API reports a rate-limit status.
	ErrRateLimited = New(DomainCatalog, "rate_limited", Transient, "rate limited by store api")

	// ErrAPI is returned when the store API responds with a non-success OCS status code.
	ErrAPI = New(DomainCatalog, "api_error", Fatal, "store api returned an error status")

	// ErrXMLParse is returned when an OCS response from the store fails to parse.
	ErrXMLParse = New(DomainCatalog, "xml_parse", Fatal, "failed to parse xml")

	// ErrMetadataParse is returned when a component's metadata.json/metadata.desktop is malformed.
	ErrMetadataParse = New(DomainMetadata, "metadata_parse", Fatal, "failed to parse component metadata")

	// ErrIO wraps an unclassified filesystem failure.
	ErrIO = New(DomainIO, "io", Fatal, "filesystem operation failed")

	// ErrComponentNotFound classifies a content id with no matching store entry as
	// skippable. The catalog client drops such ids from its results without
	// returning this error.
	ErrComponentNotFound = New(DomainResolve, "component_not_found", Skippable, "component not found in store")

	// ErrExtractionFailed is returned when archive extraction fails.
	ErrExtractionFailed = New(DomainInstall, "extraction_failed", Fatal, "failed to extract archive")

	// ErrInstallFailed is returned when the per-kind install strategy fails.
	ErrInstallFailed = New(DomainInstall, "install_failed", Fatal, "failed to install component")

	// ErrDownloadFailed is returned when fetching the update payload fails.
	ErrDownloadFailed = New(DomainInstall, "download_failed", Fatal, "failed to download update")

	// ErrBackupFailed is returned when the pre-install backup cannot be created or restored.
	ErrBackupFailed = New(DomainInstall, "backup_failed", Fatal, "failed to back up component")

	// ErrRestartFailed is returned when restarting plasmashell fails.
	ErrRestartFailed = New(DomainInstall, "restart_failed", Fatal, "failed to restart plasmashell")

	// ErrChecksumMismatch is returned when a downloaded payload's checksum does not match.
	ErrChecksumMismatch = New(DomainInstall, "checksum_mismatch", Fatal, "checksum mismatch")

	// ErrMetadataNotFound is returned when an expected metadata file is missing entirely.
	ErrMetadataNotFound = New(DomainMetadata, "metadata_not_found", Fatal, "component metadata not found")

	// ErrNoUpdatesAvailable classifies a run with nothing to update as skippable.
	// The orchestrator reports that case as an empty result with a nil error
	// rather than returning this error.
	ErrNoUpdatesAvailable = New(DomainInternal, "no_updates_available", Skippable, "no updates available")
)

// Checksum builds an ErrChecksumMismatch variant carrying both digests in the message.
func Checksum(expected, actual string) *Error {
	return ErrChecksumMismatch.WithMessagef("expected %s, got %s", expected, actual)
}
