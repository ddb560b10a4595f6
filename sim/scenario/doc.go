// Package scenario loads simulation scripts from JSON and replays them
// against a session.
//
// A scenario names a configuration and a list of steps. Each step either
// submits a batch of processes or frees process ids:
//
//	{
//	  "total": 100,
//	  "block": 10,
//	  "mode": "segmentation",
//	  "strategy": "bestFit",
//	  "steps": [
//	    {"allocate": [{"name": "editor", "size": 25}, {"size": 15}]},
//	    {"free": [1]},
//	    {"allocate": [{"name": "shell", "size": 30}], "strategy": "worst"}
//	  ]
//	}
//
// Files are UTF-8 unless "encoding" says "windows-1252", in which case the
// whole file is decoded from Windows-1252 before parsing.
package scenario
