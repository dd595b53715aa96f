// Package parse turns YAML text into a stream of grammar events.
//
// # Usage
//
//	p := parse.NewParser("a: 1\n")
//	for {
//	    ev, err := p.Next()
//	    if err != nil {
//	        return err
//	    }
//	    if ev == nil {
//	        break
//	    }
//	    fmt.Println(ev)
//	}
//
// Most callers want the load package instead, which drives a Parser
// to completion and builds value trees. The event stream is the right
// level for inspection tools and custom document builders: implement
// EventReceiver and hand it to Load.
//
// # Related Packages
//
//   - github.com/yamlcore/go-yamlcore/token - Tokenization
//   - github.com/yamlcore/go-yamlcore/load - Build IR trees from events
//   - github.com/yamlcore/go-yamlcore/ir - IR representation
package parse
