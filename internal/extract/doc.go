// Package extract is a small selector engine on top of goquery. A Rule names
// the repeated container nodes of a page and, for each container, the fields
// to read from it. The engine knows nothing about any particular site; the
// site-specific part lives entirely in the rule tables handed to it.
package extract
