// Package komikcast implements providers.Source for the komikcast manga
// site. Pages are fetched once per call, walked with the rule table in
// rules.go and normalized into provider records. Failures never reach the
// caller: search and latest degrade to a fixed catalog, the other
// operations to empty values.
package komikcast
