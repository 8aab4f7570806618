// Package creators implements the reference creators for the standard
// pipeline layout:
//
//	pipeline:
//	  stages:
//	    - stage:
//	        type: CI
//	        spec:
//	          execution:
//	            steps:
//	              - step: {type: ShellScript, spec: {...}}
//	              - parallel:
//	                  - step: {...}
//	                  - step: {...}
//
// Each creator resolves its field into one plan node and hands the fields
// below it back to the engine as dependencies. Elements of a `stages` or
// `steps` array are chained with NEXT_STEP advisers. Elements of a
// `parallel` array are not chained; they run as children of the parallel
// node.
package creators
