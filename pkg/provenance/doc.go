// Package provenance records why an artifact ended up in the local cache.
//
// A Tracker listens for ArtifactResolved events. For each event whose file lives in the
// local repository and whose trace chain contains a collection step for the same node,
// it writes the step's ancestor path, leaf first, to
//
//	<artifact dir>/.tracking/<request root with ':' replaced by '_'>
//
// For an artifact com.x:lib:2.0 collected for com.x:app:1.0 through com.x:mid:1.0:
//
//	com.x:lib:2.0 (compile)
//	  com.x:mid:1.0 (compile)
//	    com.x:app:1.0 (compile)
//
// Each qualifying event rewrites the whole file. A later resolution of the same artifact
// for the same root through a different path replaces the earlier record.
package provenance
