// Package config provides configuration parsing for routerstore.
//
// The configuration is stored in routerstore.json. Values from the file can be
// overridden by environment variables, which are in turn read from a .env file
// when one is present.
//
// # Configuration File Structure
//
//	{
//	  "serializer": "minimal",
//	  "server": {
//	    "host": "localhost",
//	    "port": 4300
//	  },
//	  "devtools": {
//	    "history": 50
//	  },
//	  "archive": {
//	    "bucket": "router-states",
//	    "prefix": "states/",
//	    "region": "us-east-1"
//	  },
//	  "metrics": {
//	    "namespace": "routerstore"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// # Environment
//
//	ROUTERSTORE_SERIALIZER        serializer
//	ROUTERSTORE_HOST              server.host
//	ROUTERSTORE_PORT              server.port
//	ROUTERSTORE_ARCHIVE_BUCKET    archive.bucket
//	ROUTERSTORE_ARCHIVE_PREFIX    archive.prefix
//	ROUTERSTORE_ARCHIVE_REGION    archive.region
//	ROUTERSTORE_ARCHIVE_ENDPOINT  archive.endpoint
//	ROUTERSTORE_LOG_LEVEL         log.level
package config
