// Package dicelog counts dice-roll outcomes in exported TRPG chat logs.
//
// Quick start:
//
//	d, err := dicelog.New(dicelog.WithLenient())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := d.AnalyzeFile("session.html")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(report.Format("探索者A", dicelog.Critical))
//
// A Dicelog holds no per-call state and is safe for concurrent use.
package dicelog
