// Package editor wires the document model, history, drag reorder and
// persistence into a single editing session.
package editor
