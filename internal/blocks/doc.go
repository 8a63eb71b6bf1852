// Package blocks defines the flat rich-text block model consumed by the renderer
// and the nested node types the renderer builds from it.
//
// Input documents are ordered sequences of Block values. Each text block holds
// Span children tagged with mark identifiers; annotation marks reference a
// MarkDef of the same block. List membership is expressed flatly through
// ListType and ListLevel.
//
// The constructed node types (ListNode, ListItemNode, MarkNode) together with
// *Block and *Span form a closed union behind the Node interface. Classify
// reports how the render walker treats a given node.
package blocks
