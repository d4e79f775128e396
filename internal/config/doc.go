// Package config provides configuration parsing for vtree projects.
//
// The configuration is stored in vtree.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "name": "dashboard",
//	  "dev": true,
//	  "server": {
//	    "addr": ":8080",
//	    "metricsPath": "/metrics",
//	    "writeTimeout": "10s"
//	  },
//	  "render": {
//	    "pretty": false,
//	    "strategy": "live"
//	  },
//	  "snapshot": {
//	    "store": "s3",
//	    "bucket": "my-pages",
//	    "prefix": "pages/",
//	    "region": "eu-west-1"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.LoadOrNew(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Addr:", cfg.Server.Addr)
package config
