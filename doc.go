// Package shellkit runs shell scripts, optionally as root, and reports their
// outcome as classified results.
//
// Two façades are exposed by the root Service:
//
//   - exec     – one-shot jobs, each call gets its own shell
//   - session  – a long-lived root shell shared by serialized callers
//
// Typical use:
//
//	srv, _ := shellkit.New()
//	ret := srv.Executor().ExecuteScript(ctx, "id", true)
//	fmt.Println(ret.Code(), ret.StdoutText())
//
//	sess, _ := srv.OpenSession(ctx)
//	defer sess.Close()
//	ok := sess.Run(ctx, "mount -o rw,remount /system")
//
// Commands with environment and PATH additions are assembled with the
// model/command builder.
package shellkit
