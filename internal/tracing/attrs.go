package tracing

// Span names.
const (
	SpanPass      = "engine.pass"
	SpanAnalyze   = "structure.analyze"
	SpanDecorate  = "decoration.build"
	SpanRender    = "render.apply"
	SpanAPIPrefix = "api."
)

// Attribute keys.
const (
	AttrPassID         = "pass.id"
	AttrTextBytes      = "text.bytes"
	AttrFlagDoc        = "change.doc"
	AttrFlagViewport   = "change.viewport"
	AttrFlagSelection  = "change.selection"
	AttrBullets        = "bullets.count"
	AttrGrandparents   = "bullets.grandparents"
	AttrParents        = "bullets.parents"
	AttrSpans          = "spans.count"
	AttrAutoFormatting = "settings.auto_formatting"
	AttrRenderer       = "renderer.name"
)
