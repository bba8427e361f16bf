// Package replay drives resolution events from a declared dependency tree.
//
// It stands in for a resolution engine: for every root it walks the declared tree
// depth-first, fires ArtifactResolved for each node's descriptor under a collection-step
// trace, and afterwards fires ArtifactResolved for each node's main artifact under a
// plain artifact-request trace. Versions are taken as declared; nothing is selected
// or mediated.
//
//	context: compile
//	roots:
//	  - artifact: com.x:app:1.0
//	    dependencies:
//	      - artifact: com.x:mid:1.0
//	        parent: com.x:parent:1.0
//	        dependencies:
//	          - artifact: com.x:lib:2.0
//	external:
//	  - com.x:mid:1.0
package replay
