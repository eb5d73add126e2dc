package validation

// Issue is a single validation failure located by its field path.
type Issue struct {
	Path    []string
	Code    string
	Message string
}

// FormatIssues groups issue messages by the first element of their path,
// keeping the order in which they were encountered. Issues without a field
// name are dropped.
func FormatIssues(issues []Issue) map[string][]string {
	errors := map[string][]string{}
	for _, issue := range issues {
		if len(issue.Path) == 0 || issue.Path[0] == "" {
			continue
		}
		field := issue.Path[0]
		errors[field] = append(errors[field], issue.Message)
	}
	return errors
}
