// Package production provides integrations around fsmx machines: snapshot
// persistence, record publishing and Graphviz/JSON export.
package production
