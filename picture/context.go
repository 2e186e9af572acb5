package picture

// Context is the lifetime object a producer attaches to a picture. The
// reference-counting machinery only ever copies and destroys it, and never
// looks inside.
type Context interface {
	// Copy returns an independent lifetime handle for a downstream
	// consumer; the copy shares whatever the original refers to.
	Copy() (Context, error)

	// Destroy releases the handle.
	Destroy()
}

// CopyContext attaches to dst a copy of the context of src, if src has
// one. dst must not have a context yet.
func CopyContext(dst, src *Picture) error {
	srcCtx := src.Context()
	if srcCtx == nil {
		return nil
	}
	if dst.Context() != nil {
		return ErrContextAttached
	}
	c, err := srcCtx.Copy()
	if err != nil {
		return err
	}
	dst.SetContext(c)
	return nil
}
