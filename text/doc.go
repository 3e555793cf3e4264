// Package text turns strings into labels that a softdraw.Surface can paint.
//
// A FontSource owns parsed font data and a cache of rasterized glyph masks.
// A Face is a lightweight view of a source at one pixel size; its Layout
// method shapes a string and returns a *Label whose glyphs implement
// softdraw.Glyph.
//
//	source := text.DefaultSource()
//	face := source.Face(14)
//	label := face.Layout("load 0.42", softdraw.Pt(8, 4))
//	surface.DrawLabel(label, softdraw.White)
//
// Glyph coverage is rasterized from the font outlines with
// golang.org/x/image/vector. Shaping is pluggable: BuiltinShaper maps runes
// to glyphs one by one and applies pair kerning, while GoTextShaper runs
// the HarfBuzz port from go-text/typesetting for ligatures and complex
// scripts.
//
// The embedded default font is Go Mono.
package text
