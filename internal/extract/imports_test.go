package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/primer/internal/lang"
)

func sources(entries []ImportEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Source)
	}
	return out
}

func TestScanImports_GoBlock(t *testing.T) {
	src := []byte(`package x

import (
	"fmt"
	"strings"

	kuzu "github.com/kuzudb/go-kuzu"
	_ "embed"
)

import "os"
`)
	entries := scanImports(src, lang.LangGo)
	assert.Equal(t, []string{"fmt", "strings", "github.com/kuzudb/go-kuzu", "embed", "os"}, sources(entries))
	for _, e := range entries {
		assert.False(t, e.IsRelative, "Go imports are never relative")
	}
}

func TestScanImports_TypeScript(t *testing.T) {
	t.Run("import forms", func(t *testing.T) {
		src := []byte(`import express from "express";
import { a, b } from "./util";
import "./side-effect";
const legacy = require("lodash");
const lazy = await import("./lazy");
export { c } from "../shared/c";
`)
		entries := scanImports(src, lang.LangTypeScript)
		assert.Equal(t, []string{"express", "./util", "./side-effect", "lodash", "./lazy", "../shared/c"}, sources(entries))

		assert.False(t, entries[0].IsRelative)
		assert.True(t, entries[1].IsRelative)
		assert.True(t, entries[5].IsRelative)
	})

	t.Run("deduplicates by source", func(t *testing.T) {
		src := []byte(`import { a } from "./x";
import { b } from "./x";
`)
		entries := scanImports(src, lang.LangTypeScript)
		require.Len(t, entries, 1)
		assert.Equal(t, "./x", entries[0].Source)
	})

	t.Run("commented imports are ignored", func(t *testing.T) {
		src := []byte(`// import { a } from "./gone";
/* import { b } from "./also-gone"; */
import { c } from "./real";
`)
		entries := scanImports(src, lang.LangTypeScript)
		assert.Equal(t, []string{"./real"}, sources(entries))
	})
}

func TestScanImports_Python(t *testing.T) {
	src := []byte(`import os, sys
from . import sibling
from ..pkg import thing
from typing import Optional
# import commented
`)
	entries := scanImports(src, lang.LangPython)
	assert.Equal(t, []string{"os", "sys", ".", "..pkg", "typing"}, sources(entries))
	assert.True(t, entries[2].IsRelative)
	assert.True(t, entries[3].IsRelative)
	assert.False(t, entries[4].IsRelative)
}

func TestScanImports_Rust(t *testing.T) {
	src := []byte(`use std::collections::HashMap;
pub use crate::store::Store;
use super::util;
use serde::Deserialize;
`)
	entries := scanImports(src, lang.LangRust)
	require.Len(t, entries, 4)
	assert.False(t, entries[0].IsRelative)
	assert.True(t, entries[1].IsRelative)
	assert.True(t, entries[2].IsRelative)
	assert.False(t, entries[3].IsRelative)
	assert.Equal(t, "serde::Deserialize", entries[3].Source)
}
