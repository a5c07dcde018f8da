package docstore

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("eraser.docstore")
