package clipping

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	packsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "clipplanes",
		Name:      "packs_total",
		Help:      "The number of times a plane set was packed into its texture buffer.",
	})

	uploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "clipplanes",
		Name:      "texture_uploads_total",
		Help:      "The number of sub-region texture uploads.",
	})

	uploadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "clipplanes",
		Name:      "texture_upload_bytes_total",
		Help:      "The number of bytes uploaded to plane textures.",
	})

	capacityRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "clipplanes",
		Name:      "capacity_rejections_total",
		Help:      "The number of planes rejected because a collection was full.",
	})
)
