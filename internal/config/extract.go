package config

// Extract defines what one run pulls and how it is shaped on the way out.
type Extract struct {
	// Query is the JQL expression selecting the tickets.
	Query string `yaml:"query"`

	// Fields is the requested field list; it bounds the response size.
	Fields []string `yaml:"fields"`

	// Expansions are the nested-array columns to expand into scalars.
	Expansions []Expansion `yaml:"expansions"`

	// Columns is the explicit ordered output column selection (dotted
	// paths, after custom-field resolution).
	Columns []string `yaml:"columns"`

	// Renames is the curated human-facing rename pass applied after
	// selection.
	Renames map[string]string `yaml:"renames"`
}

// Expansion describes one Flattener application.
type Expansion struct {
	// Column is the dotted path of the nested-array column.
	Column string `yaml:"column"`

	// Keep lists the sub-fields projected out of the last array entry.
	Keep []string `yaml:"keep"`

	// KeepOriginal retains the unexpanded column alongside the new
	// scalar columns. The default drops it.
	KeepOriginal bool `yaml:"keepOriginal,omitempty"`
}

// DefaultExtract is the service-desk extract this pipeline was built for:
// the last year of incident/request tickets with their SLA cycle fields.
func DefaultExtract() Extract {
	return Extract{
		Query: `created >= -365d ` +
			`AND project = "Genomics England Service Desk" ` +
			`AND (type = "Incident" OR type = "Service Request" ` +
			`OR type = "NGIS - General Enquiry" OR type = "NGIS - Incident" ` +
			`OR type = "Problem Record (SD & QI Only)") ` +
			`ORDER BY created ASC`,
		Fields: []string{
			"issuetype",
			"status",
			"summary",
			"priority",
			"reporter",
			"assignee",
			"created",
			"updated",
			"resolved",
			"customfield_12985", // Tribe/Squad
			"customfield_10101", // Time to resolution
			"customfield_10102", // Time to first response
			"customfield_13030", // First Assignee
			"customfield_13031", // First Line Fix
			"customfield_10420", // Reason for Pending
			"customfield_12120", // NGIS General Enquiry
		},
		Expansions: []Expansion{
			// ongoingCycle objects flatten at the top level; only the
			// completedCycles arrays need expansion.
			{
				Column: "fields.customfield_10101.completedCycles",
				Keep:   []string{"breached", "goalDuration.millis", "elapsedTime.millis"},
			},
			{
				Column: "fields.customfield_10102.completedCycles",
				Keep:   []string{"breached", "goalDuration.millis", "elapsedTime.millis"},
			},
			{
				Column: "fields.customfield_13031",
				Keep:   []string{"value"},
			},
			{
				Column: "fields.customfield_12120.completedCycles",
				Keep:   []string{"breached", "goalDuration.millis", "elapsedTime.millis"},
			},
		},
		Columns: []string{
			"key",
			"fields.summary",
			"fields.issuetype.name",
			"fields.created",
			"fields.NGIS General Enquiry.ongoingCycle.breached",
			"fields.reporter.name",
			"fields.priority.name",
			"fields.Tribe/Squad.value",
			"fields.Tribe/Squad.child.value",
			"fields.assignee.name",
			"fields.updated",
			"fields.status.name",
			"fields.status.statusCategory.name",
			"fields.First Assignee.name",
			"fields.Time to resolution.ongoingCycle.breached",
			"fields.Time to first response.ongoingCycle.breached",
			"fields.Reason for Pending.value",
			"fields.Time to resolution.completedCycles.breached",
			"fields.Time to resolution.completedCycles.goalDuration.millis",
			"fields.Time to resolution.completedCycles.elapsedTime.millis",
			"fields.Time to first response.completedCycles.breached",
			"fields.Time to first response.completedCycles.goalDuration.millis",
			"fields.Time to first response.completedCycles.elapsedTime.millis",
			"fields.First Line Fix.value",
			"fields.NGIS General Enquiry.completedCycles.breached",
			"fields.NGIS General Enquiry.completedCycles.goalDuration.millis",
			"fields.NGIS General Enquiry.completedCycles.elapsedTime.millis",
		},
		Renames: map[string]string{
			"key":                               "Ticket Number",
			"fields.summary":                    "Summary",
			"fields.issuetype.name":             "Issue Type",
			"fields.created":                    "Date Created",
			"fields.reporter.name":              "Reporter",
			"fields.priority.name":              "Priority",
			"fields.Tribe/Squad.value":          "Tribe",
			"fields.Tribe/Squad.child.value":    "Squad",
			"fields.assignee.name":              "Assignee",
			"fields.updated":                    "Updated Date",
			"fields.status.name":                "Status",
			"fields.status.statusCategory.name": "Status Category",
			"fields.First Assignee.name":        "First Assignee",
		},
	}
}
