package docxwriter

import "context"

// Assemble renders a whole document into b: the title, every content group
// in order, then the watermark when it is not empty. Input is validated
// before anything is rendered. ctx is checked between content groups.
func Assemble(ctx context.Context, b *Builder, in *Input, watermark string) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := RenderTitle(b, in.Title); err != nil {
		return err
	}

	for _, group := range in.Content {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := DispatchGroup(b, group); err != nil {
			return err
		}
	}

	return RenderWatermark(b, watermark)
}
