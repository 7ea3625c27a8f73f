// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runrecord loads recorded runs and replays them as events.
//
// A record is a YAML document listing features, their scenarios and the
// outcome of every step. Replaying a record emits the same event sequence a
// live run would, so listeners can be driven without executing anything.
//
//	name: calculator
//	features:
//	  - name: Addition
//	    background:
//	      steps:
//	        - { keyword: Given, name: a calculator, status: passed }
//	    scenarios:
//	      - name: add two numbers
//	        steps:
//	          - { keyword: When, name: I add 2 and 3, status: passed }
//	          - { keyword: Then, name: the result is 5, status: failed, error: "got 6" }
package runrecord
