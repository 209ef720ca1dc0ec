// Package document applies edits to the text of an outline.
//
// The compiler never writes to its input. Edits that change the document
// (toggling fold and hide markers, materializing ids, authoring links) go
// through a [Document], which rewrites only the metadata section of the
// affected lines and leaves everything else byte-for-byte intact:
//
//	doc, err := document.Load("system.outline")
//	i, _ := doc.Resolve("worker")
//	doc.SetVisibility(i, outline.VisibilityFold)
//	doc.Save()
//
// Folding a line rewrites "fold" markers below it to "folded", so that
// unfolding it later restores the inner folds exactly as they were.
package document
