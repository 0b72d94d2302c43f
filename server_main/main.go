// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"github.com/SoftbearStudios/sculpt/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/netutil"
	"log"
	"net"
	"net/http"
	_ "net/http/pprof"
)

func main() {
	var (
		configPath     string
		debugLog       string
		port           int
		maxConnections int
	)

	flag.StringVar(&configPath, "config", "", "YAML config file (defaults if empty)")
	flag.StringVar(&debugLog, "debug-log", "", "csv file to append debug stats to")
	flag.IntVar(&port, "port", 0, "http service port (overrides config)")
	flag.IntVar(&maxConnections, "max-connections", 0, "maximum number of inbound TCP connections (overrides config)")
	flag.Parse()

	cfg := server.DefaultConfig()
	if configPath != "" {
		loaded, err := server.LoadConfig(configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = *loaded
	}
	if port != 0 {
		cfg.Port = port
	}
	if maxConnections != 0 {
		cfg.MaxConnections = maxConnections
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	var metrics *server.Metrics
	if cfg.Metrics {
		metrics = server.NewMetrics(prometheus.DefaultRegisterer)
		http.Handle("/metrics", promhttp.Handler())
	}

	hub := server.NewHub(server.HubOptions{
		Config:   &cfg,
		Metrics:  metrics,
		DebugLog: debugLog,
	})

	go hub.Run()

	http.HandleFunc("/", hub.ServeIndex)
	http.HandleFunc("/ws", hub.ServeSocket)

	l, err := net.Listen("tcp", fmt.Sprint(":", cfg.Port))

	if err != nil {
		log.Fatalf("Listen: %v", err)
	}
	defer l.Close()

	l = netutil.LimitListener(l, cfg.MaxConnections)

	log.Printf("sandbox server started on :%d", cfg.Port)
	log.Fatal("ListenAndServe: ", http.Serve(l, nil))
}
