package hermes

const (
	StreamName   = "FRONTIER_EVENTS"
	StreamMaxAge = "168h" // 7 days

	// SubjectAll matches every event this service publishes.
	SubjectAll = "frontier.>"
)

func SubjectDatasetCreated(datasetID string) string {
	return "frontier.dataset." + datasetID + ".created"
}

func SubjectDatasetDeleted(datasetID string) string {
	return "frontier.dataset." + datasetID + ".deleted"
}

func SubjectFrontierComputed(datasetID string) string {
	return "frontier.dataset." + datasetID + ".computed"
}

// SubjectAdhocComputed is used for frontiers computed from inline points
// that belong to no dataset.
const SubjectAdhocComputed = "frontier.adhoc.computed"
