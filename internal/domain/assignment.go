package domain

// Assignment links one Site and one Staff. The (SiteID, StaffID) pair is
// unique across the collection; uniqueness is enforced by the single
// insertion path in the repository, not by the collection itself.
type Assignment struct {
	Meta
	SiteID     string `json:"siteId"`
	StaffID    string `json:"staffId"`
	AssignedAt string `json:"assignedAt"`
}
