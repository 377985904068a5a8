package server

// HTMLPage is a self-contained TodoMVC application using the classic TodoMVC
// markup: hash routing, localStorage persistence, the destroy button shown on
// row hover and completed labels struck through. Like the reference React
// application it leaves the main section and footer out of the document while
// the list is empty.
const HTMLPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <title>TodoMVC Fixture</title>
    <style>
        body {
            font: 14px 'Helvetica Neue', Helvetica, Arial, sans-serif;
            max-width: 550px;
            margin: 40px auto;
            background: #f5f5f5;
            color: #111;
        }
        .todoapp { background: #fff; box-shadow: 0 2px 4px rgba(0,0,0,0.2); }
        h1 { text-align: center; font-weight: 100; color: #b83f45; font-size: 64px; margin: 0; }
        .new-todo, .edit {
            width: 100%;
            box-sizing: border-box;
            font-size: 20px;
            padding: 12px 16px;
            border: 1px solid #ddd;
        }
        .hidden { display: none !important; }
        .main { border-top: 1px solid #e6e6e6; }
        .toggle-all { margin: 8px 16px; }
        .todo-list { list-style: none; margin: 0; padding: 0; }
        .todo-list li { position: relative; border-bottom: 1px solid #ededed; font-size: 20px; }
        .todo-list li .view { display: flex; align-items: center; padding: 12px 16px; }
        .todo-list li label { flex: 1; margin-left: 12px; word-break: break-all; }
        .todo-list li.completed label { color: #949494; text-decoration: line-through; }
        .todo-list li .destroy {
            display: none;
            border: 0;
            background: none;
            color: #949494;
            font-size: 24px;
            cursor: pointer;
        }
        .todo-list li:hover .destroy { display: block; }
        .todo-list li .edit { display: none; }
        .todo-list li.editing .edit { display: block; }
        .todo-list li.editing .view { display: none; }
        .footer {
            display: flex;
            justify-content: space-between;
            align-items: center;
            padding: 10px 16px;
            border-top: 1px solid #e6e6e6;
            color: #555;
        }
        .filters { list-style: none; display: flex; gap: 6px; margin: 0; padding: 0; }
        .filters a { color: inherit; text-decoration: none; padding: 3px 7px; border: 1px solid transparent; }
        .filters a.selected { border-color: #ce4646; }
        .clear-completed { border: 0; background: none; cursor: pointer; color: inherit; }
    </style>
</head>
<body>
    <section class="todoapp">
        <header class="header">
            <h1>todos</h1>
            <input class="new-todo" placeholder="What needs to be done?" autofocus>
        </header>
        <section class="main">
            <input id="toggle-all" class="toggle-all" type="checkbox">
            <label for="toggle-all">Mark all as complete</label>
            <ul class="todo-list"></ul>
        </section>
        <footer class="footer">
            <span class="todo-count"></span>
            <ul class="filters">
                <li><a href="#/">All</a></li>
                <li><a href="#/active">Active</a></li>
                <li><a href="#/completed">Completed</a></li>
            </ul>
            <button class="clear-completed hidden">Clear completed</button>
        </footer>
    </section>

    <script>
        (function () {
            var STORAGE_KEY = 'todos-fixture';
            var todos = load();
            var nextId = todos.reduce(function (m, t) { return Math.max(m, t.id); }, 0) + 1;
            var editingId = null;

            var app = document.querySelector('.todoapp');
            var newTodo = document.querySelector('.new-todo');
            var main = document.querySelector('.main');
            var toggleAll = document.querySelector('.toggle-all');
            var list = document.querySelector('.todo-list');
            var footer = document.querySelector('.footer');
            var count = document.querySelector('.todo-count');
            var clearBtn = document.querySelector('.clear-completed');

            function load() {
                try {
                    return JSON.parse(localStorage.getItem(STORAGE_KEY)) || [];
                } catch (e) {
                    return [];
                }
            }

            function save() {
                localStorage.setItem(STORAGE_KEY, JSON.stringify(todos));
            }

            function filter() {
                var h = location.hash.replace(/^#\/?/, '');
                if (h === 'active' || h === 'completed') {
                    return h;
                }
                return 'all';
            }

            function visible(t) {
                var f = filter();
                if (f === 'active') { return !t.completed; }
                if (f === 'completed') { return t.completed; }
                return true;
            }

            function find(id) {
                for (var i = 0; i < todos.length; i++) {
                    if (todos[i].id === id) { return i; }
                }
                return -1;
            }

            function row(t) {
                var li = document.createElement('li');
                li.dataset.id = t.id;
                if (t.completed) { li.classList.add('completed'); }
                if (t.id === editingId) { li.classList.add('editing'); }

                var view = document.createElement('div');
                view.className = 'view';
                var toggle = document.createElement('input');
                toggle.className = 'toggle';
                toggle.type = 'checkbox';
                toggle.checked = t.completed;
                var label = document.createElement('label');
                label.textContent = t.title;
                var destroy = document.createElement('button');
                destroy.className = 'destroy';
                destroy.textContent = '×';
                view.appendChild(toggle);
                view.appendChild(label);
                view.appendChild(destroy);

                var edit = document.createElement('input');
                edit.className = 'edit';
                edit.value = t.title;

                li.appendChild(view);
                li.appendChild(edit);
                return li;
            }

            function render() {
                list.textContent = '';
                todos.filter(visible).forEach(function (t) {
                    list.appendChild(row(t));
                });

                var active = todos.filter(function (t) { return !t.completed; }).length;
                var done = todos.length - active;
                mount(footer, todos.length > 0, null);
                mount(main, todos.length > 0, footer);
                clearBtn.classList.toggle('hidden', done === 0);
                toggleAll.checked = todos.length > 0 && active === 0;

                count.textContent = '';
                var strong = document.createElement('strong');
                strong.textContent = String(active);
                count.appendChild(strong);
                count.appendChild(document.createTextNode(' ' + (active === 1 ? 'item' : 'items') + ' left'));

                var f = filter();
                document.querySelectorAll('.filters a').forEach(function (a) {
                    var target = a.getAttribute('href').replace(/^#\/?/, '') || 'all';
                    a.classList.toggle('selected', target === f);
                });

                if (editingId !== null) {
                    var input = list.querySelector('li.editing .edit');
                    if (input) {
                        input.focus();
                        input.setSelectionRange(input.value.length, input.value.length);
                    }
                }
            }

            // mount attaches el before ref, or detaches it. An empty list
            // renders neither the main section nor the footer.
            function mount(el, on, ref) {
                if (on && !el.isConnected) {
                    app.insertBefore(el, ref);
                } else if (!on && el.isConnected) {
                    el.remove();
                }
            }

            function idOf(el) {
                var li = el.closest('li');
                return li ? Number(li.dataset.id) : -1;
            }

            function commitEdit(input) {
                if (editingId === null) { return; }
                var i = find(editingId);
                editingId = null;
                if (i >= 0) {
                    var title = input.value.trim();
                    if (title === '') {
                        todos.splice(i, 1);
                    } else {
                        todos[i].title = title;
                    }
                    save();
                }
                render();
            }

            function cancelEdit() {
                if (editingId === null) { return; }
                editingId = null;
                render();
            }

            newTodo.addEventListener('keydown', function (e) {
                if (e.key !== 'Enter') { return; }
                var title = newTodo.value.trim();
                if (title === '') { return; }
                todos.push({ id: nextId++, title: title, completed: false });
                newTodo.value = '';
                save();
                render();
            });

            toggleAll.addEventListener('change', function () {
                var checked = toggleAll.checked;
                todos.forEach(function (t) { t.completed = checked; });
                save();
                render();
            });

            list.addEventListener('change', function (e) {
                if (!e.target.classList.contains('toggle')) { return; }
                var i = find(idOf(e.target));
                if (i < 0) { return; }
                todos[i].completed = e.target.checked;
                save();
                render();
            });

            list.addEventListener('click', function (e) {
                if (!e.target.classList.contains('destroy')) { return; }
                var i = find(idOf(e.target));
                if (i < 0) { return; }
                todos.splice(i, 1);
                save();
                render();
            });

            list.addEventListener('dblclick', function (e) {
                if (e.target.tagName !== 'LABEL') { return; }
                editingId = idOf(e.target);
                render();
            });

            list.addEventListener('keydown', function (e) {
                if (!e.target.classList.contains('edit')) { return; }
                if (e.key === 'Enter') {
                    commitEdit(e.target);
                } else if (e.key === 'Escape') {
                    cancelEdit();
                }
            });

            list.addEventListener('focusout', function (e) {
                if (e.target.classList.contains('edit')) {
                    commitEdit(e.target);
                }
            });

            clearBtn.addEventListener('click', function () {
                todos = todos.filter(function (t) { return !t.completed; });
                save();
                render();
            });

            window.addEventListener('hashchange', render);
            render();
        })();
    </script>
</body>
</html>
`
