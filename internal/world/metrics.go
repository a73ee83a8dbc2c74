package world

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sectionBuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voxmesh_section_builds_total",
		Help: "The total number of section meshes built.",
	})

	sectionRemovals = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voxmesh_section_removals_total",
		Help: "The total number of section meshes invalidated.",
	})

	columnsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "voxmesh_columns_loaded",
		Help: "The number of loaded columns.",
	})

	sectionMeshes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "voxmesh_section_meshes",
		Help: "The number of registered section meshes.",
	})

	sectionBuildSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "voxmesh_section_build_seconds",
		Help:    "The time spent building one section mesh.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
	})
)
