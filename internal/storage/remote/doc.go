// Package remote implements interfaces.RemoteStore over several backends.
// Every store holds one document per handle and reports an absent document
// with interfaces.ErrDocumentNotFound.
package remote
