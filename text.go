package frag3d

// LabelDrawer draws a text label on behalf of a Text object. start and end are the label's two projected
// anchors in pixels, index is the label's position in the Text object, scale is the scene's pixel scale and
// lineScale the scale for line widths.
type LabelDrawer interface {
	DrawLabel(p Painter, start, end Vec2, index int, scale, lineScale float64)
}

// LabelDrawerFunc is a function that can be used as a LabelDrawer.
type LabelDrawerFunc func(p Painter, start, end Vec2, index int, scale, lineScale float64)

func (fn LabelDrawerFunc) DrawLabel(p Painter, start, end Vec2, index int, scale, lineScale float64) {
	fn(p, start, end, index, scale, lineScale)
}

// StringLabels is a LabelDrawer writing a fixed string for each label at its start anchor.
type StringLabels struct {
	Texts []string
	Color Color
	Size  float64 // Font size in pixels before scaling
}

func (sl *StringLabels) DrawLabel(p Painter, start, end Vec2, index int, scale, lineScale float64) {
	if index < 0 || index >= len(sl.Texts) {
		return
	}
	p.DrawString(start, sl.Texts[index], sl.Color, sl.Size*scale)
}

// Text is a set of labels. Each label is anchored by a start point and an end point (for instance to
// give the direction of an axis), and drawn by the LabelDrawer when painted.
type Text struct {
	// Pos1 and Pos2 hold the start and end anchors as flat x, y, z triples.
	Pos1, Pos2 []float64

	params PathParams
}

// NewText creates a Text object with the anchors given, drawn by drawer.
func NewText(pos1, pos2 []float64, drawer LabelDrawer) *Text {
	return &Text{
		Pos1:   pos1,
		Pos2:   pos2,
		params: PathParams{Label: drawer},
	}
}

// Drawer returns the LabelDrawer for the labels.
func (text *Text) Drawer() LabelDrawer {
	return text.params.Label
}

func (text *Text) Type() ObjectType { return ObjectTypeText }

func (text *Text) isObject() {}

// AppendFragments emits a path fragment for each pair of finite anchors. The start anchor is the
// fragment's point, while the end anchor is carried in the second point slot.
func (text *Text) AppendFragments(outerM Mat4, cam *Camera, out *FragmentList) {

	f := Fragment{
		Type:   FragmentPath,
		Object: text,
		Params: &text.params,
	}

	numItems := min(len(text.Pos1), len(text.Pos2)) / 3

	for i := 0; i < numItems; i++ {

		p1 := Vec4{text.Pos1[i*3], text.Pos1[i*3+1], text.Pos1[i*3+2], 1}
		p2 := Vec4{text.Pos2[i*3], text.Pos2[i*3+1], text.Pos2[i*3+2], 1}

		f.Points[0], f.Proj[0] = transformPoint(outerM, cam, p1)
		f.Points[1], f.Proj[1] = transformPoint(outerM, cam, p2)
		f.PathIndex = i

		if segmentFinite(&f) {
			out.Append(f)
		}

	}

}
