// Package yaml_adapter loads problem instances written in YAML:
//
//	settings:
//	  planner: heft
//	  matcher: minmin
//	resources:
//	  - name: vm0
//	    mips: 1000
//	    bandwidth: 100
//	tasks:
//	  - name: extract
//	    length: 1200
//	    files:
//	      - {name: raw.csv, size: 2000000, kind: output}
//
// Every entry is checked with validator tags before it is translated into the
// format-agnostic config model.
package yaml_adapter
