package main

func (a *app) cmdRun(args []string) int {
	var o options
	flags := a.flagSet("run", &o)
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() > 0 {
		return a.fail("run: unexpected argument %q", flags.Arg(0))
	}

	if err := a.serve(a.stdin, a.stdout, o); err != nil {
		return a.fail("%v", err)
	}
	return 0
}
